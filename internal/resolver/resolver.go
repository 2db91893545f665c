// Package resolver maps source filenames to staging table names.
package resolver

import (
	"path/filepath"
	"strings"

	"github.com/rcampelo/briza/pkg/briza"
)

// tableMappings fixes the destination tables for the known files of the
// Brazilian E-Commerce dataset. This is static configuration, not state.
var tableMappings = map[string]string{
	"olist_customers_dataset.csv":             "customers_raw",
	"olist_geolocation_dataset.csv":           "geolocation_raw",
	"olist_order_items_dataset.csv":           "order_items_raw",
	"olist_order_payments_dataset.csv":        "order_payments_raw",
	"olist_order_reviews_dataset.csv":         "order_reviews_raw",
	"olist_orders_dataset.csv":                "orders_raw",
	"olist_products_dataset.csv":              "products_raw",
	"olist_sellers_dataset.csv":               "sellers_raw",
	"product_category_name_translation.csv":   "product_category_translation_raw",
}

// Resolver derives staging table names from source filenames.
// A zero-size type; safe for concurrent use.
type Resolver struct{}

// New creates a table name resolver.
func New() Resolver {
	return Resolver{}
}

// Resolve returns the destination table for a source filename. Known Olist
// filenames use the fixed mapping; anything else falls back to the derived
// form: extension stripped, raw-data suffix appended.
//
//	Resolve("olist_customers_dataset.csv") == "customers_raw"
//	Resolve("unknown_file.csv")            == "unknown_file_raw"
//
// Pure function: no I/O, no failure modes.
func (Resolver) Resolve(filename string) string {
	if table, ok := tableMappings[filename]; ok {
		return table
	}
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return base + briza.RawTableSuffix
}
