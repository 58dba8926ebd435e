package schema

import (
	"github.com/almanac-cloud/almanac/api/rest/service/automation"
	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
)

// New instantiates a fresh GraphQL schema for
// Almanac's read-only query API.
func New() graphql.SchemaConfig {
	return graphql.SchemaConfig{
		Query: graphql.NewObject(
			graphql.ObjectConfig{
				Name:   "Query",
				Fields: fields(),
			},
		),
	}
}

var runType = graphql.NewObject(graphql.ObjectConfig{
	Name: "AutomationRun",
	Fields: graphql.Fields{
		"id":            &graphql.Field{Type: graphql.String},
		"automation_id": &graphql.Field{Type: graphql.String},
		"run_time":      &graphql.Field{Type: graphql.DateTime},
		"status":        &graphql.Field{Type: graphql.String},
		"result_summary": &graphql.Field{
			Type: graphql.String,
		},
	},
})

var automationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Automation",
	Fields: graphql.Fields{
		"id":            &graphql.Field{Type: graphql.String},
		"user_id":       &graphql.Field{Type: graphql.String},
		"name":          &graphql.Field{Type: graphql.String},
		"description":   &graphql.Field{Type: graphql.String},
		"skill_name":    &graphql.Field{Type: graphql.String},
		"trigger_type":  &graphql.Field{Type: graphql.String},
		"schedule_cron": &graphql.Field{Type: graphql.String},
		"timezone":      &graphql.Field{Type: graphql.String},
		"status":        &graphql.Field{Type: graphql.String},
		"created_at":    &graphql.Field{Type: graphql.DateTime},
		"updated_at":    &graphql.Field{Type: graphql.DateTime},
	},
})

func fields() graphql.Fields {
	return graphql.Fields{
		"automations": &graphql.Field{
			Type: graphql.NewList(automationType),
			Args: graphql.FieldConfigArgument{
				"user_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"status":  &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				userID, err := uuid.Parse(p.Args["user_id"].(string))
				if err != nil {
					return nil, err
				}

				req := &automation.ListRequest{UserID: userID}
				if status, ok := p.Args["status"].(string); ok {
					req.Status = status
				}

				return automation.Service(p.Context).List(req)
			},
		},
		"automation": &graphql.Field{
			Type: automationType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id, err := uuid.Parse(p.Args["id"].(string))
				if err != nil {
					return nil, err
				}

				return automation.Service(p.Context).Get(id)
			},
		},
		"lastRun": &graphql.Field{
			Type: runType,
			Args: graphql.FieldConfigArgument{
				"automation_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id, err := uuid.Parse(p.Args["automation_id"].(string))
				if err != nil {
					return nil, err
				}

				return automation.Service(p.Context).GetLastRun(id)
			},
		},
	}
}
