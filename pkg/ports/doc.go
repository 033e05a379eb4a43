/*
Package ports defines the driven ports (interfaces) of the wizard core.

These interfaces decouple the engine from external implementations, allowing
it to work with different session stores, directory backends and row stores.

# Key Interfaces

  - StateStore: persists and loads per-session navigation State.
  - Directory: looks up services in the external directory (live or fixture).
  - RowStore: reads and appends rows of the analysis spreadsheet.
*/
package ports
