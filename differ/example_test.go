package differ_test

import (
	"fmt"
	"log"

	"github.com/erraggy/oascompat/differ"
	"github.com/erraggy/oascompat/parser"
)

const petsV1 = `
openapi: 3.0.3
info: {title: Pets, version: "1.0"}
paths:
  /pets:
    get:
      operationId: listPets
      parameters:
        - name: limit
          in: query
          schema: {type: integer, maximum: 100}
      responses:
        "200": {description: ok}
`

const petsV2 = `
openapi: 3.0.3
info: {title: Pets, version: "1.0"}
paths:
  /pets:
    get:
      operationId: listPets
      parameters:
        - name: limit
          in: query
          schema: {type: integer, maximum: 50}
        - name: owner
          in: query
          required: true
          schema: {type: string}
      responses:
        "200": {description: ok}
    post:
      operationId: createPet
      responses:
        "201": {description: created}
`

func mustParse(doc string) parser.ParseResult {
	result, err := parser.ParseWithOptions(parser.WithBytes([]byte(doc)))
	if err != nil {
		log.Fatal(err)
	}
	return *result
}

// Example compares two parsed documents and lists the nodes whose own
// changes are classified above NoChanges, most specific first.
func Example() {
	result, err := differ.DiffWithOptions(
		differ.WithSourceParsed(mustParse(petsV1)),
		differ.WithTargetParsed(mustParse(petsV2)),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(result.Severity())
	for _, entry := range result.Flatten() {
		if entry.CoreSeverity == differ.NoChanges {
			continue
		}
		fmt.Printf("%s: %s\n", entry.Path, entry.CoreSeverity)
	}
	// Output:
	// incompatible
	// api.paths./pets.get.parameters.query:limit.schema.maximum: incompatible
	// api.paths./pets.get.parameters: incompatible
	// api.paths./pets: compatible
}

// Example_endpoints shows the endpoint summaries of a result.
func Example_endpoints() {
	d := differ.New()
	result, err := d.DiffParsed(mustParse(petsV1), mustParse(petsV2))
	if err != nil {
		log.Fatal(err)
	}

	for _, e := range result.NewEndpoints {
		fmt.Printf("new: %s %s (%s)\n", e.Method, e.Path, e.OperationID)
	}
	for _, op := range result.ChangedOperations {
		fmt.Printf("changed: %s %s %s\n", op.Method, op.Path, op.Severity())
	}
	fmt.Println("compatible:", result.IsCompatible())
	// Output:
	// new: post /pets (createPet)
	// changed: get /pets incompatible
	// compatible: false
}
