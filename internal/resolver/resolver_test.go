package resolver

import "testing"

func TestResolver_Resolve_KnownFiles(t *testing.T) {
	r := New()

	tests := []struct {
		filename string
		expected string
	}{
		{"olist_customers_dataset.csv", "customers_raw"},
		{"olist_geolocation_dataset.csv", "geolocation_raw"},
		{"olist_order_items_dataset.csv", "order_items_raw"},
		{"olist_order_payments_dataset.csv", "order_payments_raw"},
		{"olist_order_reviews_dataset.csv", "order_reviews_raw"},
		{"olist_orders_dataset.csv", "orders_raw"},
		{"olist_products_dataset.csv", "products_raw"},
		{"olist_sellers_dataset.csv", "sellers_raw"},
		{"product_category_name_translation.csv", "product_category_translation_raw"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := r.Resolve(tt.filename); got != tt.expected {
				t.Errorf("Resolve(%q) = %q, expected %q", tt.filename, got, tt.expected)
			}
		})
	}
}

func TestResolver_Resolve_Fallback(t *testing.T) {
	r := New()

	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{name: "Unknown CSV", filename: "unknown_file.csv", expected: "unknown_file_raw"},
		{name: "Other extension", filename: "export.txt", expected: "export_raw"},
		{name: "No extension", filename: "snapshot", expected: "snapshot_raw"},
		{name: "Multiple dots strips last only", filename: "daily.orders.csv", expected: "daily.orders_raw"},
		{name: "Case sensitive lookup misses mapping", filename: "OLIST_ORDERS_DATASET.CSV", expected: "OLIST_ORDERS_DATASET_raw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.filename); got != tt.expected {
				t.Errorf("Resolve(%q) = %q, expected %q", tt.filename, got, tt.expected)
			}
		})
	}
}
