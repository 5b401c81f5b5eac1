// Package redteam implements the red-teaming pipeline orchestrator.
//
// A run walks detectors in caller order, generates behavioral
// requirements per detector, derives concrete test cases per requirement,
// drives the agent under test with each case, judges every resulting
// conversation, and persists the accumulated result table. Execution is
// strictly sequential and depth-first; the record order in the table
// (detector, then requirement, then test case) is a contract callers can
// rely on.
package redteam
