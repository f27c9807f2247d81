// Package tags parses EC2 tags and describe filters from command-line input.
//
// Tags are given as Key=Value pairs and turned into tag specifications for a
// resource type. Filters use the Name=<name>,Values=<v1>,<v2> form, with a
// <name>=<v1>,<v2> shorthand.
package tags
