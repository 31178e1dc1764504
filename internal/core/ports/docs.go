// Package ports defines the contracts between the order lifecycle core and the
// outside world: persistence of orders and their status history, the catalog and
// customer collaborators consulted at checkout, and the notification collaborator
// told about placed orders and status changes.
package ports
