/*
Package ddb provides the DynamoDB implementation of datastore.Backend and the
entity codec that maps Go structs to items.

Backend issues exactly one BatchGetItem, BatchWriteItem or Scan call per
method call and reports UnprocessedKeys, UnprocessedItems and
LastEvaluatedKey back unchanged; the bulk package owns chunking and retries.

Macro Expansion:
Key and index attributes are rendered from the index map registered for the
entity type, replacing {Field} with the marshalled attribute value:

	registry.RegisterIndexMap[Player](registry.IndexMap{
	    "PK":     "CLUB#{Club}",   // Becomes "CLUB#lions"
	    "SK":     "PLAYER#{ID}",
	    "GSI1PK": "PLAYER#{ID}",
	})

	item, err := ddb.MarshalEntity(player)
	key, err := ddb.EntityKey[Player](map[string]string{"Club": "lions", "ID": id})

Every marshalled entity also carries an EntityType attribute so that
UnmarshalRecords can skip other types sharing the table.
*/
package ddb
