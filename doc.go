// Package main provides the bgs command-line interface.
//
// bgs splits the files in a directory into batches whose total byte size
// never exceeds a configured limit, and saves each batch as a JSON
// descriptor. Two bin-packing strategies are available: an order-preserving
// first-fit packer and a best-fit packer that minimizes leftover capacity.
//
// The main binary supports multiple subcommands:
//   - group: Collect file sizes and write group descriptors
//   - validate: Re-check saved group descriptors against a size limit
//   - seed: Generate test files of randomized sizes
package main
