// Package sysmem queries the operating system for the memory page size and
// the number of physical pages currently available for allocation, and
// answers whether a prospective allocation fits within a caller-supplied
// fraction of that headroom.
//
// "Available" means free pages plus whatever the platform reports as
// immediately reclaimable; each platform file documents its exact source.
package sysmem
