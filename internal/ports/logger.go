package ports

import "github.com/skyviewhq/skyview/pkg/log"

// Logger is the structured logging abstraction used across the pipeline.
// Aliased from pkg/log so internal packages need only one import.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field
