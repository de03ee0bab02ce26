package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/pawmart/pawmart/app/resources"
	"github.com/pawmart/pawmart/app/services"
	"github.com/pawmart/pawmart/pkg/response"
)

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":            &graphql.Field{Type: graphql.Int},
		"name":          &graphql.Field{Type: graphql.String},
		"sku":           &graphql.Field{Type: graphql.String},
		"description":   &graphql.Field{Type: graphql.String},
		"category":      &graphql.Field{Type: graphql.String},
		"brand":         &graphql.Field{Type: graphql.String},
		"color":         &graphql.Field{Type: graphql.String},
		"price":         &graphql.Field{Type: graphql.String},
		"regularPrice":  &graphql.Field{Type: graphql.String},
		"stock":         &graphql.Field{Type: graphql.Int},
		"soldCount":     &graphql.Field{Type: graphql.Int},
		"averageRating": &graphql.Field{Type: graphql.Float},
		"ratingCount":   &graphql.Field{Type: graphql.Int},
		"images":        &graphql.Field{Type: graphql.NewList(graphql.String)},
	},
})

func toMap(p resources.ProductResource) map[string]interface{} {
	return map[string]interface{}{
		"id":            p.ID,
		"name":          p.Name,
		"sku":           p.SKU,
		"description":   p.Description,
		"category":      p.Category,
		"brand":         p.Brand,
		"color":         p.Color,
		"price":         p.Price,
		"regularPrice":  p.RegularPrice,
		"stock":         p.Stock,
		"soldCount":     p.SoldCount,
		"averageRating": p.AverageRating,
		"ratingCount":   p.RatingCount,
		"images":        p.Images,
	}
}

// NewSchema builds the read-only catalogue schema backed by the catalog
// service. Mutations are intentionally absent, writes go through the REST
// surface where role middleware applies.
func NewSchema(catalog *services.CatalogService) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					product, err := catalog.Get(uint(id))
					if err != nil {
						return nil, err
					}
					return toMap(resources.NewProduct(product)), nil
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"page":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"perPage":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 15},
					"category": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					page, _ := p.Args["page"].(int)
					perPage, _ := p.Args["perPage"].(int)
					category, _ := p.Args["category"].(string)

					products, _, err := catalog.List(page, perPage, category)
					if err != nil {
						return nil, err
					}
					out := make([]map[string]interface{}, 0, len(products))
					for _, pr := range resources.NewProductList(products) {
						out = append(out, toMap(pr))
					}
					return out, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}

// Handler serves POSTed GraphQL requests against the schema.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.BadRequest(w, "Malformed request body")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  body.Query,
			VariableValues: body.Variables,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}
