/*
Package registry associates Go entity types with their DynamoDB key patterns.

Index maps are templates whose {Field} macros are replaced with the entity's
attribute values when the entity is turned into an item or a key:

	registry.RegisterIndexMap[User](registry.IndexMap{
	    "PK":     "USER#{ID}",
	    "SK":     "PROFILE",
	    "GSI1PK": "EMAIL#{Email}",
	})

The typed bulk helpers (PutEntities, GetEntities, DeleteEntities) look the map
up with GetIndexMap[T]. The registry is thread-safe and is usually populated
during initialization, in init() functions or through generated code.
*/
package registry
