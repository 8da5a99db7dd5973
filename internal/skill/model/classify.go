package model

import "strings"

// Classification lists come from the GitHub linguist names observed in
// language histograms. Anything unmatched classifies as "other".
var skillCategories = map[string][]string{
	TypeLanguage: {
		"PHP", "JavaScript", "TypeScript", "Python", "Java", "C", "C++", "C#", "Go", "Rust",
		"Ruby", "Swift", "Kotlin", "Dart", "Scala", "R", "MATLAB", "Octave", "Perl", "Lua",
		"Haskell", "Erlang", "Elixir", "F#", "Objective-C", "Objective-C++", "Groovy", "Julia",
		"Nim", "Zig", "Crystal", "Fortran", "COBOL", "Ada", "Pascal", "Delphi", "Assembly",
		"OCaml", "ReasonML", "Clojure", "Common Lisp", "Scheme", "Prolog", "Visual Basic",
		"VBA", "VB.NET", "Hack", "Solidity", "VHDL", "Verilog", "OpenCL", "CUDA", "GLSL",
		"ShaderLab", "GDScript", "Q#", "Tcl", "Smalltalk", "APL", "Forth", "Racket", "Elm",
		"PureScript", "CoffeeScript", "Awk", "Sed", "Gnuplot", "Roff", "Pony", "Idris", "Agda",
		"Mercury", "FoxPro", "XQuery", "RPG", "ABAP", "Inform", "Pawn", "Nemerle", "LiveScript",
		"HTML", "CSS", "SCSS", "SASS", "Less", "Stylus", "PostCSS", "Pug", "Jade", "Haml",
		"Slim", "Handlebars", "Mustache", "Twig", "Liquid", "Smarty", "Velocity", "FreeMarker",
		"Thymeleaf", "JSP", "ASP", "ASPX", "Razor", "EJS", "ERB", "JSX", "TSX", "Svelte",
		"Astro", "MDX", "MJML", "AMP",
	},
	TypeFramework: {
		"React", "Next.js", "Angular", "Vue", "Nuxt.js", "SvelteKit", "SolidJS",
		"Laravel", "Symfony", "CodeIgniter", "Yii", "CakePHP", "Lumen",
		"Django", "Flask", "FastAPI", "Tornado", "Bottle", "Pyramid",
		"Spring", "Spring Boot", "Micronaut", "Quarkus", "Play", "Vert.x", "Dropwizard",
		"Ruby on Rails", "Sinatra", "Hanami",
		".NET", "ASP.NET", "ASP.NET Core",
		"Express", "NestJS", "Hapi", "Koa", "AdonisJS", "Sails.js", "FeathersJS", "LoopBack",
		"React Native", "Expo", "Ionic", "Cordova", "Capacitor", "Flutter", "Qt", "Kivy",
		"Electron", "Tauri", "SwiftUI", "Jetpack Compose",
		"Gatsby", "Gridsome", "Remix", "Blitz.js", "RedwoodJS", "Meteor",
	},
	TypeTool: {
		"Shell", "PowerShell", "Batchfile", "Makefile", "CMake", "Meson", "Bazel", "Buck",
		"Ninja", "Gradle", "Maven", "Ant", "SBT", "Poetry", "Pipenv", "Setuptools", "Conda",
		"Virtualenv", "Dockerfile", "Docker Compose", "Kubernetes", "Helm", "Kustomize",
		"Ansible", "Puppet", "Chef", "SaltStack", "Vagrant", "Packer", "Nix", "NixOS", "HCL",
		"Terraform", "pnpm", "Yarn", "npm", "Lerna", "Nx", "Rush", "TurboRepo", "OpenSCAD",
		"Mathematica", "Maple", "Wolfram", "Starlark", "Fish", "Zsh", "Bash", "Esbuild", "SWC",
		"Rollup", "Webpack", "Parcel", "Gulp", "Grunt", "Snowpack", "Rspack",
	},
	TypeDatabase: {
		"SQL", "MySQL", "T-SQL", "PLpgSQL", "PLSQL", "SQLPL", "SQLite", "MariaDB",
		"PostgreSQL", "Oracle", "MongoDB", "Redis", "Cassandra", "CouchDB", "DynamoDB",
		"Elasticsearch", "Solr", "Neo4j", "Gremlin", "InfluxDB", "ClickHouse", "Firestore",
		"Realm", "HBase", "RethinkDB", "ArangoDB", "FaunaDB", "DuckDB", "Trino", "Presto",
		"Snowflake", "BigQuery", "GraphQL", "Apollo", "Prisma", "Hasura",
	},
}

var skillTypeByName = buildSkillTypeIndex()

func buildSkillTypeIndex() map[string]string {
	index := make(map[string]string)
	for skillType, names := range skillCategories {
		for _, name := range names {
			index[name] = skillType
		}
	}
	return index
}

// SkillTypeFor classifies a skill name into one of the skill type constants.
// Unknown names classify as TypeOther.
func SkillTypeFor(name string) string {
	if skillType, ok := skillTypeByName[strings.TrimSpace(name)]; ok {
		return skillType
	}
	return TypeOther
}
