// Package cli implements the ro1mon command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to a command function for the actual work. Implementation
// details live in other internal packages; this one handles flags,
// config resolution, and output shape.
//
// # Command Structure
//
// The root command is "ro1mon" with subcommands for different operations:
//
//	ro1mon watch              - Live variable dashboard
//	ro1mon get [name...]      - Read variables once
//	ro1mon set <name> <value> - Update a variable via the workspace API
//	ro1mon registers          - Read Modbus holding registers once
//	ro1mon call [path]        - Invoke a workspace API method by dotted path
//	ro1mon init               - Create .ro1mon.yaml config
//	ro1mon version            - Print version information
//
// # Flag Handling
//
// Global flags (--config, --json) are defined on the root command and
// available to all subcommands. Command-specific flags like --source and
// --interval are defined on individual commands.
//
// # Output Modes
//
// Every one-shot command has two output modes: human tables on stdout,
// or a JSONEnvelope when --json is set. Errors map to machine-readable
// codes through ErrorToJSON so automation can branch on the failure
// kind without parsing message text.
package cli
