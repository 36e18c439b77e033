/*
Package config manages configuration parsing and validation for subvert.

	            +-------------+
	            |   Config    |
	            | (Defaults)  |
	            +------+------+
	                   |
	      +-----------+-----------+-----------+
	      |                       |           |
	+-----+-----+           +----+----+ +----+----+
	|   YAML    |           |   HCL   | |  JSON   |
	| Parser    |           | Parser  | | Parser  |
	+-----------+           +---------+ +---------+

🎯 Purpose:
- Loads optional project defaults from .subvert.{yaml,yml,hcl,json}
- Validates engine names, timeouts, job counts and glob patterns
- Hands the file selection settings to the walker

🔄 Flow:
1. Discover finds the first default config file in a directory
2. GetParser picks a parser from the file extension
3. The parser decodes with unknown fields rejected
4. Validate normalizes and checks the values

Command line flags that are set explicitly take precedence over every value
loaded here; the merge happens in the CLI.

HCL files can use expressions: num_cpu holds the number of CPUs and env exposes
the process environment.

	jobs   = num_cpu / 2
	engine = env.SUBVERT_ENGINE

🔍 Example:

	path, err := config.Discover(".")
	if path != "" {
		cfg, err := config.Load(ctx, path)
		...
	}
*/
package config
