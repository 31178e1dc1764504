// Package actor describes the authenticated principal performing an operation.
//
// Actors are not owned by this service: the authentication collaborator resolves a
// credential to an identity, a category and a role, and the inbound adapters turn
// that into an Actor. Every use case receives the Actor explicitly and passes it to
// services.AccessPolicy before touching any order.
package actor
