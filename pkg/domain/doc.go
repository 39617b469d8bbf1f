/*
Package domain contains the core data model of the QuickTrace engine.

It defines the records produced by a traced sort run, such as Steps and the
SortReport, along with the persisted Trace, lifecycle events and the sentinel
errors shared by the input helpers and the stores. This package is kept pure and
free of I/O or persistence concerns.

# Key Entities

  - Step: An immutable snapshot of the sort at one instant (array, pivot, range, counters).
  - SortReport: The ordered step log of one run plus its totals and the sorted array.
  - Trace: A SortReport persisted under an ID together with the original input.
  - LifecycleHooks: Callbacks fired while a report is dispatched to observers.
*/
package domain
