// Package httpx holds the HTTP plumbing shared by the dictionary and
// translation clients: a resty client with an optional circuit breaker and
// the error taxonomy every collaborator call maps onto.
package httpx
