package handlers

// @title Chat Relay API
// @version 1.0
// @description Forwards chat messages to a text-generation service

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /api/v1

// @tag.name chat
// @tag.description Chat generation operations
