// Package main provides the entry point for the foodapp API server.
// It runs a Fiber based REST API for a multi-tenant food ordering service:
// customers browse menus and place orders, merchants manage their menus and
// fulfill orders, and a super administrator manages roles and permissions.
// Authorization is enforced by a database backed role/permission graph with
// gorm for persistence.
package main
