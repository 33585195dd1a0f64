// Package services provides domain services that do not belong to a single aggregate.
//
// The package includes:
//   - RoleAccessPolicy: decides which roles may perform which order operations
//
// The inbound adapter consults the policy before invoking a command or query; handlers
// themselves trust the actor they receive.
package services
