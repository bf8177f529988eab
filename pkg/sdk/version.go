package sdk

// Version is the version of the game contract implemented by this package.
const Version = "0.1.0-alpha.1"
