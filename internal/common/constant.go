package common

// DefaultCurrency is applied to debts and settings created without an
// explicit currency code.
const DefaultCurrency = "UZS"

// BearerScheme is the HTTP authentication scheme used for access tokens and
// advertised in WWW-Authenticate challenges.
const BearerScheme = "Bearer"
