// Package mock is used to generate mock files for testing.
package mock

//go:generate mockgen -source ../iface.go -destination mock_authstate/mock_iface.go
//go:generate mockgen -source ../contextstore/contextstore.go -destination mock_contextstore/mock_contextstore.go
//go:generate mockgen -source ../fetcher/fetcher.go -destination mock_fetcher/mock_fetcher.go
//go:generate mockgen -package authstate -source ../cookies.go -destination ../mock_cookies_test.go
