package tasklist

import (
	"strings"

	"github.com/matzehuels/archexport/pkg/diagram"
)

// Profile is the per-type heuristic table used to synthesize a task.
//
// Title is a template where "{label}" is replaced by the node label. File
// templates replace "{name}" with the sanitized label.
type Profile struct {
	Title      string
	Context    string
	Objectives []string
	Criteria   []string
	Files      []string
	BaseHours  float64
	Tags       []string
	Hints      []string
}

// Profiles maps each known node type to its heuristics. Types missing from
// the map use [FallbackProfile].
var Profiles = map[diagram.NodeType]Profile{
	diagram.NodeUIComponent: {
		Title:   "Build {label} Component",
		Context: "Create the user-facing {label} component of the interface.",
		Objectives: []string{
			"Implement the component layout and styling",
			"Manage component state and user interactions",
			"Ensure accessibility (keyboard navigation, ARIA attributes)",
			"Handle loading, empty and error states",
		},
		Criteria: []string{
			"Component renders correctly across supported viewports",
			"Interactive elements are keyboard accessible",
			"Loading and error states are visible to the user",
		},
		Files: []string{
			"src/components/{name}/index.tsx",
			"src/components/{name}/{name}.test.tsx",
			"src/components/{name}/styles.css",
		},
		BaseHours: 4,
		Tags:      []string{"frontend", "ui", "component"},
		Hints: []string{
			"Start from the shared design system primitives",
			"Keep presentational and data-fetching concerns separate",
			"Add a story or visual test for each state",
		},
	},
	diagram.NodeAPIEndpoint: {
		Title:   "Implement {label} Endpoint",
		Context: "Expose {label} as an API endpoint for its consumers.",
		Objectives: []string{
			"Define the request and response schema",
			"Validate incoming requests",
			"Implement consistent error handling and status codes",
			"Document the endpoint contract",
		},
		Criteria: []string{
			"Endpoint responds with the documented schema",
			"Invalid requests are rejected with descriptive errors",
			"Endpoint is covered by integration tests",
		},
		Files: []string{
			"src/api/routes/{name}.ts",
			"src/api/validators/{name}.ts",
			"src/api/routes/{name}.test.ts",
		},
		BaseHours: 3,
		Tags:      []string{"backend", "api", "endpoint"},
		Hints: []string{
			"Generate request validation from the schema definition",
			"Return structured error bodies with stable error codes",
			"Add rate limiting if the endpoint is public",
		},
	},
	diagram.NodeDatabase: {
		Title:   "Set Up {label} Database",
		Context: "Provision and model the {label} data store.",
		Objectives: []string{
			"Design the schema and relationships",
			"Write migrations for schema creation and changes",
			"Add indexes for the expected query patterns",
			"Configure backups and connection pooling",
		},
		Criteria: []string{
			"Migrations apply and roll back cleanly",
			"Indexes cover the primary query paths",
			"Connection settings are configurable per environment",
		},
		Files: []string{
			"db/migrations/create-{name}.sql",
			"src/models/{name}.ts",
			"db/seeds/{name}.sql",
		},
		BaseHours: 5,
		Tags:      []string{"database", "data", "persistence"},
		Hints: []string{
			"Version every schema change as a migration",
			"Seed realistic fixture data for local development",
			"Review query plans for the heaviest access paths",
		},
	},
	diagram.NodeService: {
		Title:   "Develop {label} Service",
		Context: "Implement the {label} service and its business logic.",
		Objectives: []string{
			"Implement the core business logic",
			"Handle errors and retries at service boundaries",
			"Write unit tests for the service logic",
			"Expose health and readiness checks",
		},
		Criteria: []string{
			"Business rules are covered by unit tests",
			"Failures in downstream calls are handled gracefully",
			"Service exposes a health check",
		},
		Files: []string{
			"src/services/{name}/index.ts",
			"src/services/{name}/{name}.test.ts",
		},
		BaseHours: 6,
		Tags:      []string{"backend", "service", "logic"},
		Hints: []string{
			"Keep transport code out of the business logic",
			"Inject collaborators so they can be faked in tests",
			"Emit structured logs for every failed operation",
		},
	},
	diagram.NodeInfrastructure: {
		Title:   "Configure {label} Infrastructure",
		Context: "Provision the {label} infrastructure component.",
		Objectives: []string{
			"Define the infrastructure as code",
			"Configure networking and access control",
			"Set up monitoring and alerting",
		},
		Criteria: []string{
			"Infrastructure is reproducible from code",
			"Access is restricted to the components that need it",
			"Monitoring alerts on failure",
		},
		Files: []string{
			"infra/{name}/main.tf",
			"infra/{name}/variables.tf",
			"infra/{name}/README.md",
		},
		BaseHours: 4,
		Tags:      []string{"infrastructure", "devops", "ops"},
		Hints: []string{
			"Parameterize environment differences instead of copying modules",
			"Tag every resource with its owning component",
			"Document the manual steps that remain",
		},
	},
}

// FallbackProfile is used for nodes without a known type.
var FallbackProfile = Profile{
	Title:   "Implement {label}",
	Context: "Implement the {label} component.",
	Objectives: []string{
		"Clarify the responsibilities of the component",
		"Implement the required functionality",
		"Write tests for the component",
	},
	Criteria: []string{
		"Component fulfills its documented responsibilities",
	},
	Files: []string{
		"src/{name}/index.ts",
		"src/{name}/{name}.test.ts",
	},
	BaseHours: 3,
	Tags:      []string{"general"},
	Hints: []string{
		"Assign a concrete node type in the diagram to get more specific guidance",
	},
}

// ProfileFor returns the profile of t, or [FallbackProfile].
func ProfileFor(t diagram.NodeType) Profile {
	if p, ok := Profiles[t]; ok {
		return p
	}
	return FallbackProfile
}

func expand(template, label string) string {
	return strings.ReplaceAll(template, "{label}", label)
}

func expandFiles(templates []string, name string) []string {
	out := make([]string, len(templates))
	for i, t := range templates {
		out[i] = strings.ReplaceAll(t, "{name}", name)
	}
	return out
}
