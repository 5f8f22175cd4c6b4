// Package drive is a thin client for the cloud file store that holds creative
// packages. The pipeline only needs two operations: list the children of a
// folder and download a file's content.
package drive
