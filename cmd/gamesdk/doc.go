// Package main provides the entry point for gamesdk, the command-line
// companion to gamesdk-server.
//
// Usage:
//
//	gamesdk header validate [FILE]
//	gamesdk -o yaml header show header.yml
//	gamesdk fetch --server 127.0.0.1:8080 game.js
//	gamesdk ping 127.0.0.1:7070
//	gamesdk config validate gamesdk.yaml
package main
