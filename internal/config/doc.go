// Package config provides configuration loading, merging, and validation
// facilities for the web server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  0. A dotenv file loaded into the process environment ([LoadDotEnv])
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry point is [GetStructuredConfig]. The resulting
// [StructuredConfig] is treated as immutable and passed by pointer.
package config
