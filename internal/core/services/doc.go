// Package services contains the core business logic of the helpdesk CLI.
// Services implement the driving ports and depend only on the driven
// ports, never on concrete adapters.
package services
