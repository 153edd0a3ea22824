/*
Package errors implements custom error interfaces.

The idea is to reuse as many errors from this package as possible and define
custom package errors when absolutely necessary. Errors are categorized by a
unique code carried by their root instance. Use the root error Is method
instead of direct comparison to test an error kind, because errors are
usually returned wrapped with additional context.
*/
package errors
