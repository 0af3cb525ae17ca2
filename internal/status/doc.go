// Package status implements the ticket status-assignment transformation:
// a CSV document goes in, every row's status cell is rewritten by one of two
// policies, and a CSV document comes out. The package is pure; it performs no
// I/O beyond the text it is handed and keeps no state between calls.
package status
