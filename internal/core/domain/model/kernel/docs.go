// Package kernel holds the shared value objects of the cafeteria domain:
//   - UUID: identifier wrapper that rejects the nil UUID
//   - Money: non-negative amount in minor units (cents)
//   - Clock: time source injected into handlers
package kernel
