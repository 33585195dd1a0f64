// Package order provides the Order aggregate of the cafeteria credit system.
//
// The package includes:
//   - Order: the aggregate root holding purchaser, line items, total and lifecycle
//   - LineItem: a product entry with name and unit price captured at order time
//   - Status: the state machine Placed -> InProgress -> Completed | Cancelled
//   - StatusChanged: the event emitted after an order is persisted
//
// Key business rules:
//   - An order has at least one line item and every quantity is at least 1
//   - The total is always recomputed from the line items, never taken from the caller
//   - Completed and Cancelled are terminal; nothing transitions out of them
//   - Each transition records the acting staff member as the order's waiter
//
// Concurrent writers are serialised by the repository through the order's version.
package order
