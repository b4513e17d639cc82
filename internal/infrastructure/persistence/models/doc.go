// Package models contains the GORM persistence models of the selling service.
// Models carry every ORM tag and table mapping so the domain layer stays free
// of infrastructure concerns. Each model converts to and from its aggregate
// with ToDomain and a <Model>FromDomain constructor.
//
// Child rows (document items, dynamic links) live in their own tables keyed by
// parent type and parent id; small value lists (taxes, sales team) are stored
// as JSON text so the same schema works on PostgreSQL and SQLite.
package models
