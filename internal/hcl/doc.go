// Package hcl implements the config.Loader interface for HCL application
// configuration files.
//
// A file may contain any number of these top-level blocks:
//
//	bundle "sylius_product" {
//	  driver = "doctrine/orm"
//	  classes {
//	    product {
//	      repository = "App\\Repository\\ProductRepository"
//	    }
//	  }
//	}
//
//	resource "product" "index" {
//	  repository {
//	    method    = "findBy"
//	    arguments = [{ enabled = true }]
//	  }
//	}
//
// Bundle bodies are kept raw; their shape is checked later against each
// bundle's schema. Nested blocks and object attributes are interchangeable.
package hcl
