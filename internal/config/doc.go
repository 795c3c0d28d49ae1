// Package config handles configuration loading and merging for sarif2xccdf.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--format, --theme, --jobs, --debug, --sarif-schema, ...)
//  2. Environment variables (SARIF2XCCDF_FORMAT, SARIF2XCCDF_THEME, ...)
//  3. YAML config file (.sarif2xccdf.yaml in the working directory or
//     ~/.config/sarif2xccdf/.sarif2xccdf.yaml)
//  4. Hardcoded defaults
//
// # Configuration File
//
//	sarif_schema: schemas/sarif-schema-2.1.0.json
//	xccdf_schema: schemas/xccdf/xccdf_1.2.xsd
//	xmllint: /usr/bin/xmllint
//	format: llm
//	theme: orca
//	jobs: 8
//	debug: false
//	convert:
//	  namespace: org.example
//	  status: draft
//	  target: ci-runner
//
// Unknown keys are rejected so that typos surface as errors.
//
// # Environment Variables
//
// Every key has a SARIF2XCCDF_ counterpart: SARIF2XCCDF_SARIF_SCHEMA,
// SARIF2XCCDF_XCCDF_SCHEMA, SARIF2XCCDF_XMLLINT, SARIF2XCCDF_FORMAT,
// SARIF2XCCDF_THEME, SARIF2XCCDF_JOBS, SARIF2XCCDF_DEBUG,
// SARIF2XCCDF_NAMESPACE, SARIF2XCCDF_STATUS and SARIF2XCCDF_TARGET.
// NO_COLOR selects the mono theme unless a theme is set explicitly.
package config
