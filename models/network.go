package models

import "fmt"

// Network selects which checkpoint table is active
type Network string

const (
	MainNet Network = "main"
	TestNet Network = "test"
)

// ParseNetwork accepts "main"/"mainnet" and "test"/"testnet"
func ParseNetwork(s string) (Network, error) {
	switch s {
	case "main", "mainnet":
		return MainNet, nil
	case "test", "testnet":
		return TestNet, nil
	}
	return "", fmt.Errorf("unknown network %q", s)
}

func (n Network) String() string {
	return string(n)
}
