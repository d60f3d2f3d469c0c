package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const networkManagerTemplate = `
You are assisting a network administrator in managing and configuring an OpenFlow-based network using POX.
The topic provided is: %s

<network-info>
The network currently has several OpenFlow switches connected to a POX controller.
Each switch has a unique DPID (Datapath ID) that identifies it.
You can view the switches, their connections, and configure flow tables through this interface.
</network-info>

Your goal is to help the user analyze their network, configure it effectively, and solve any potential issues.

<objectives>
1. Explore the network topology by listing connected switches
2. Examine details about specific switches
3. Configure flow tables to implement the requested network behavior
4. Analyze flow statistics to understand network traffic patterns
5. Document and explain network configurations for reference
</objectives>

Use the provided tools to interact with the POX controller and help manage this OpenFlow network.
`

const simpleHubTemplate = `
Please help me configure the switch with DPID %s to act as a simple hub.

A hub should forward all incoming packets to all other ports.
Use the set_table tool to implement this configuration.

Afterwards, please explain the configuration and how it works.
`

const learningSwitchTemplate = `
Please help me configure the switch with DPID %s to act as a learning L2 switch.

A learning switch should:
1. Forward packets based on learned MAC addresses
2. Flood packets with unknown destinations
3. Learn MAC addresses from source addresses of incoming packets

Please outline how this can be implemented in POX, even though the full implementation might require some programmatic components.
`

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("pox-network-manager",
		mcp.WithPromptDescription("A prompt to help you manage OpenFlow networks using POX"),
		mcp.WithArgument("topic",
			mcp.ArgumentDescription("Network management topic or goal to focus on"),
			mcp.RequiredArgument(),
		),
	), s.handleNetworkManagerPrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("simple-hub",
		mcp.WithPromptDescription("Configure a switch to act as a simple hub that forwards all packets to all ports"),
		mcp.WithArgument("dpid",
			mcp.ArgumentDescription("The DPID of the switch to configure"),
			mcp.RequiredArgument(),
		),
	), s.handleSimpleHubPrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("learning-switch",
		mcp.WithPromptDescription("Configure a switch to act as a learning L2 switch"),
		mcp.WithArgument("dpid",
			mcp.ArgumentDescription("The DPID of the switch to configure"),
			mcp.RequiredArgument(),
		),
	), s.handleLearningSwitchPrompt)
}

func (s *Server) handleNetworkManagerPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := req.Params.Arguments["topic"]
	if topic == "" {
		return nil, fmt.Errorf("missing required argument: topic")
	}

	return promptResult(
		fmt.Sprintf("OpenFlow network management for topic: %s", topic),
		fmt.Sprintf(networkManagerTemplate, topic),
	), nil
}

func (s *Server) handleSimpleHubPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	dpid := req.Params.Arguments["dpid"]
	if dpid == "" {
		return nil, fmt.Errorf("missing required argument: dpid")
	}

	return promptResult(
		fmt.Sprintf("Configure switch %s as a simple hub", dpid),
		fmt.Sprintf(simpleHubTemplate, dpid),
	), nil
}

func (s *Server) handleLearningSwitchPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	dpid := req.Params.Arguments["dpid"]
	if dpid == "" {
		return nil, fmt.Errorf("missing required argument: dpid")
	}

	return promptResult(
		fmt.Sprintf("Configure switch %s as a learning switch", dpid),
		fmt.Sprintf(learningSwitchTemplate, dpid),
	), nil
}

func promptResult(description, text string) *mcp.GetPromptResult {
	return mcp.NewGetPromptResult(
		description,
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(strings.TrimSpace(text))),
		},
	)
}
