/*
Package ports defines the interfaces between the QuickTrace core and its adapters.

The TraceStore port lets traces be persisted by any backend (memory, files,
redis). RunTraceStoreContract verifies that an implementation honors the port.
*/
package ports
