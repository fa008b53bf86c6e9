// Package config defines the job configuration: input and output paths, the
// sensitive-column list, and the two column-rename maps. Defaults mirror the
// upstream e-commerce export schema and are used as-is when no config file is
// given; a YAML file can override any subset of them per deployment without
// code changes.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrNoSalesPath     = errors.New("sales_path is required")
	ErrNoCatalogPath   = errors.New("catalog_path is required")
	ErrNoOrdersOut     = errors.New("orders_out is required")
	ErrNoItemsOut      = errors.New("items_out is required")
	ErrNoCatalogOut    = errors.New("catalog_out is required")
	ErrNoSalesRename   = errors.New("sales_rename must not be empty")
	ErrNoCatalogRename = errors.New("catalog_rename must not be empty")
)

// Config holds every recognized option of the job.
type Config struct {
	// SalesPath and CatalogPath locate the two raw exports.
	SalesPath   string `yaml:"sales_path"`
	CatalogPath string `yaml:"catalog_path"`

	// OrdersOut, ItemsOut, and CatalogOut locate the three emitted tables.
	OrdersOut  string `yaml:"orders_out"`
	ItemsOut   string `yaml:"items_out"`
	CatalogOut string `yaml:"catalog_out"`

	// SensitiveColumns are replaced by anonymization codes before any other
	// transform reads them. The names refer to the raw sales export.
	SensitiveColumns []string `yaml:"sensitive_columns"`

	// SalesRename and CatalogRename map raw export column names to the
	// canonical output names. Both maps are injective over the fixed input
	// schemas; unmapped columns keep their raw name.
	SalesRename   map[string]string `yaml:"sales_rename"`
	CatalogRename map[string]string `yaml:"catalog_rename"`
}

// Default returns the built-in configuration for the upstream export schema.
func Default() *Config {
	return &Config{
		SalesPath:   "relatorio_duthi_pedidos_bruto.csv",
		CatalogPath: "duthi_produtos.csv",
		OrdersOut:   "pedidos.csv",
		ItemsOut:    "itens_vendidos.csv",
		CatalogOut:  "catalogo_produtos.csv",
		SensitiveColumns: []string{
			"customers__via__customer_id__name",
			"customers__via__customer_id__email",
			"customers__via__customer_id__cgc",
			"customers__via__customer_id__phone",
			"Order Addresses__receiver",
			"Order Addresses__street",
			"Order Addresses__number",
			"Order Addresses__zipcode",
		},
		SalesRename: map[string]string{
			"id":                                "id_pedido",
			"created_at":                        "data_pedido",
			"total":                             "valor_total_pedido",
			"Order Shippings__price":            "valor_frete",
			"customers__via__customer_id__name": "id_cliente_anonimo",
			"Products__id":                      "id_produto",
			"Order Items__quantity":             "quantidade",
			"Order Items__price":                "preco_unitario_pago",
		},
		CatalogRename: map[string]string{
			"product_id": "id_produto",
			"name":       "nome_oficial",
			"category_1": "categoria_principal",
			"category_2": "categoria_secundaria",
			"category_3": "categoria_terciaria",
			"brand":      "marca",
			"stock":      "estoque_atual",
			"active":     "status_ativo",
		},
	}
}

// Load returns the default configuration overlaid with the YAML file at
// path. Omitted scalar fields keep their default; list and map fields
// replace the default wholesale when present.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg := Default()
	cfg.overlay(&file)
	return cfg, nil
}

// overlay copies every set field of o onto c.
func (c *Config) overlay(o *Config) {
	if o.SalesPath != "" {
		c.SalesPath = o.SalesPath
	}
	if o.CatalogPath != "" {
		c.CatalogPath = o.CatalogPath
	}
	if o.OrdersOut != "" {
		c.OrdersOut = o.OrdersOut
	}
	if o.ItemsOut != "" {
		c.ItemsOut = o.ItemsOut
	}
	if o.CatalogOut != "" {
		c.CatalogOut = o.CatalogOut
	}
	if o.SensitiveColumns != nil {
		c.SensitiveColumns = o.SensitiveColumns
	}
	if len(o.SalesRename) > 0 {
		c.SalesRename = o.SalesRename
	}
	if len(o.CatalogRename) > 0 {
		c.CatalogRename = o.CatalogRename
	}
}

// Validate reports the first problem with the configuration.
func (c *Config) Validate() error {
	switch {
	case c.SalesPath == "":
		return ErrNoSalesPath
	case c.CatalogPath == "":
		return ErrNoCatalogPath
	case c.OrdersOut == "":
		return ErrNoOrdersOut
	case c.ItemsOut == "":
		return ErrNoItemsOut
	case c.CatalogOut == "":
		return ErrNoCatalogOut
	case len(c.SalesRename) == 0:
		return ErrNoSalesRename
	case len(c.CatalogRename) == 0:
		return ErrNoCatalogRename
	}
	return nil
}
