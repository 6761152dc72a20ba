// Package contacts loads the contact directory used to label meeting
// participants.
//
// The directory is a spreadsheet whose first sheet has a header row followed
// by one contact per row in the columns Name, Affiliation, Type, Role and
// Email. Each contact with an email address becomes a lookup entry from the
// lower-cased address to the label "Name, Role, Affiliation".
package contacts
