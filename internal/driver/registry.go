package driver

import (
	"maps"
	"slices"
)

// Driver identifiers.
const (
	DoctrineORM        = "doctrine/orm"
	DoctrineMongoDBODM = "doctrine/mongodb-odm"
	DoctrinePHPCRODM   = "doctrine/phpcr-odm"
)

// Mapping file types.
const (
	MappingAnnotation = "annotation"
	MappingXML        = "xml"
	MappingYAML       = "yaml"
)

// Descriptor describes how a driver wires model metadata.
type Descriptor struct {
	DriverID            string
	MappingPassID       string
	ManagerServiceNames []string

	// ManagerClass is the class of the manager services.
	ManagerClass string

	// RepositoryClass is used when a model declares no repository class.
	RepositoryClass string
}

var descriptors = map[string]Descriptor{
	DoctrineORM: {
		DriverID:            DoctrineORM,
		MappingPassID:       "doctrine.orm.mappings",
		ManagerServiceNames: []string{"doctrine.orm.entity_manager"},
		ManagerClass:        "Doctrine\\ORM\\EntityManager",
		RepositoryClass:     "ResourceKit\\Doctrine\\ORM\\EntityRepository",
	},
	DoctrineMongoDBODM: {
		DriverID:            DoctrineMongoDBODM,
		MappingPassID:       "doctrine_mongodb.odm.mappings",
		ManagerServiceNames: []string{"doctrine_mongodb.odm.document_manager"},
		ManagerClass:        "Doctrine\\ODM\\MongoDB\\DocumentManager",
		RepositoryClass:     "ResourceKit\\Doctrine\\ODM\\MongoDB\\DocumentRepository",
	},
	DoctrinePHPCRODM: {
		DriverID:            DoctrinePHPCRODM,
		MappingPassID:       "doctrine_phpcr.odm.mappings",
		ManagerServiceNames: []string{"doctrine_phpcr.odm.document_manager"},
		ManagerClass:        "Doctrine\\ODM\\PHPCR\\DocumentManager",
		RepositoryClass:     "ResourceKit\\Doctrine\\ODM\\PHPCR\\DocumentRepository",
	},
}

// MappingInfo returns the descriptor of driverID.
func MappingInfo(driverID string) (Descriptor, error) {
	d, ok := descriptors[driverID]
	if !ok {
		return Descriptor{}, &UnknownDriverError{Driver: driverID}
	}
	d.ManagerServiceNames = slices.Clone(d.ManagerServiceNames)
	return d, nil
}

// Known returns every driver identifier, sorted.
func Known() []string {
	return slices.Sorted(maps.Keys(descriptors))
}

// MappingPassMethod returns the mapping-pass constructor for a mapping file type.
func MappingPassMethod(format string) (string, error) {
	switch format {
	case MappingXML:
		return "createXmlMappingDriver", nil
	case MappingYAML:
		return "createYamlMappingDriver", nil
	default:
		return "", &UnsupportedMappingFormatError{Format: format}
	}
}
