// Package report derives dashboard and report views from service records.
//
// Every function here is pure: it reads the slices it is given and never
// touches storage. Category references are weak, so any record whose
// category cannot be resolved is reported as uncategorized rather than
// treated as an error.
package report
