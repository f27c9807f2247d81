// Package catalog declares every EC2 operation ec2ctl exposes.
//
// Each file holds one resource family. An entry names the operation,
// the parameters it binds, how they map onto the SDK request, which SDK
// method to call and what part of the response is written out. The
// cmdlet package does the rest.
package catalog
