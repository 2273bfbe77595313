package tool

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerName and ServerVersion identify this tool server to hosts.
const (
	ServerName    = "flight-finder"
	ServerVersion = "1.0.0"
)

// NewServer builds the tool server with all three operations registered.
func NewServer(h *Handler) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithLogging(),
	)

	s.AddTool(searchFlightsTool(), h.SearchFlights)
	s.AddTool(getCacheStatsTool(), h.GetCacheStats)
	s.AddTool(clearCacheTool(), h.ClearCache)
	return s
}

// ServeStdio runs the server over stdin/stdout until the host disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func searchFlightsTool() mcp.Tool {
	return mcp.NewTool("search_flights",
		mcp.WithDescription("Search for flights across multiple providers and return deduplicated results sorted by price"),
		mcp.WithString("origin",
			mcp.Description("Origin airport IATA code (e.g., JFK, LHR)"),
			mcp.Required(),
		),
		mcp.WithString("destination",
			mcp.Description("Destination airport IATA code (e.g., CDG, SFO)"),
			mcp.Required(),
		),
		mcp.WithString("departure_date",
			mcp.Description("Departure date (YYYY-MM-DD)"),
			mcp.Required(),
		),
		mcp.WithString("return_date",
			mcp.Description("Return date (YYYY-MM-DD) for round trips. Omit for one-way."),
		),
		mcp.WithNumber("adults",
			mcp.Description("Number of adult passengers (default 1)"),
		),
		mcp.WithNumber("children",
			mcp.Description("Number of child passengers (default 0)"),
		),
		mcp.WithNumber("infants",
			mcp.Description("Number of infant passengers (default 0)"),
		),
		mcp.WithString("cabin_class",
			mcp.Description("Cabin class: economy, premium_economy, business, or first (default economy)"),
		),
		mcp.WithNumber("max_stops",
			mcp.Description("Maximum number of stops (0-5). Omit for no limit."),
		),
		mcp.WithBoolean("non_stop_only",
			mcp.Description("Only return non-stop flights (default false)"),
		),
	)
}

func getCacheStatsTool() mcp.Tool {
	return mcp.NewTool("get_cache_stats",
		mcp.WithDescription("Return result cache statistics: size, hits, misses, and hit rate"),
	)
}

func clearCacheTool() mcp.Tool {
	return mcp.NewTool("clear_cache",
		mcp.WithDescription("Clear all cached search results"),
	)
}
