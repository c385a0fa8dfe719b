// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - WikiAPI / AuthAPI / UsersAPI: The remote wiki server's HTTP contract
//   - TokenStore: Bearer credential persistence across restarts
//   - RecentStore: Most-recently-visited page persistence, per user
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
