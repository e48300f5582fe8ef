package model

// Coin labels the chain a data directory, mirror row or metric belongs to.
type Coin string

// Network names the chain parameters used to decode addresses.
type Network string

const BTC Coin = "BTC"

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Regtest Network = "regtest"
	Signet  Network = "signet"
)
