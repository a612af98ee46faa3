// Package stats keeps cumulative counters describing what a task registry has
// done over its lifetime (admissions, rejections, evictions and kills).
package stats
