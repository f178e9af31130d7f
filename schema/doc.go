// Package schema defines the wire types exchanged with the SumerQA chat/RAG
// service: credential pairs, chats, messages, document ingestion results and
// the error envelope. The types mirror the service's JSON contract and carry
// no behaviour beyond serialization.
package schema
