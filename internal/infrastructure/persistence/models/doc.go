// Package models contains GORM persistence models and their conversions to
// and from domain entities. Domain types stay free of persistence tags; the
// mapping lives here.
package models
