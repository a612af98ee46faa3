// Package model contains the value types shared by the task registry: the
// Priority and Mode enumerations, the immutable Task record and the error
// kinds returned by registry operations.
//
// External input (strings from configuration, flags or JSON) is validated
// once by ParsePriority / ParseMode; everything past that boundary works with
// the closed enumerations.
package model
