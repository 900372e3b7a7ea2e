package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block a configuration file may contain.
type fileRoot struct {
	Plugins []*pluginBlock `hcl:"plugin,block"`
	Blocks  []*blockBlock  `hcl:"block,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

// pluginBlock is a block plugin manifest:
//
//	plugin "search_form_block" {
//	  admin_label = "Search form"
//	  category    = "Forms"
//	  provider    = "search"
//	}
type pluginBlock struct {
	ID         string `hcl:"id,label"`
	AdminLabel string `hcl:"admin_label,optional"`
	Category   string `hcl:"category,optional"`
	Provider   string `hcl:"provider,optional"`
}

// blockBlock is one block placement:
//
//	block "bartik_search" {
//	  plugin   = "search_form_block"
//	  theme    = "bartik"
//	  region   = "sidebar_first"
//	  weight   = -1
//	  settings = { label = "Search" }
//	}
type blockBlock struct {
	ID       string         `hcl:"id,label"`
	Plugin   string         `hcl:"plugin,attr"`
	Theme    string         `hcl:"theme,attr"`
	Region   string         `hcl:"region,optional"`
	Weight   int            `hcl:"weight,optional"`
	Status   *bool          `hcl:"status,optional"`
	Settings hcl.Expression `hcl:"settings,optional"`
}
