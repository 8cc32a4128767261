package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Agent-name utilities used by problem generators: producing agent name
// sets, matching agents to variables by numeric index, and deriving
// hosting costs from that matching. The core only consumes the final
// mapping; these helpers exist so generators and tests agree on one
// convention.

// GenerateAgentsFromCount produces count unique agent names, zero-padded to
// the width of the largest index: GenerateAgentsFromCount(100, "a") yields
// "a00" ... "a99".
func GenerateAgentsFromCount(count int, prefix string) []string {
	if count <= 0 {
		return nil
	}
	digits := len(strconv.Itoa(count - 1))
	agents := make([]string, count)
	for i := 0; i < count; i++ {
		agents[i] = fmt.Sprintf("%s%0*d", prefix, digits, i)
	}

	return agents
}

// GenerateAgentsFromVariables produces one agent name per variable by
// replacing the variables' common prefix, minus any trailing digits, with
// the agent prefix: ["v01","v02"] with prefix "a" yields ["a01","a02"].
func GenerateAgentsFromVariables(variables []string, prefix string) []string {
	cut := len(strings.TrimRight(FindPrefix(variables), "0123456789"))
	agents := make([]string, len(variables))
	for i, variable := range variables {
		agents[i] = prefix + variable[cut:]
	}

	return agents
}

// FindPrefix returns the longest common prefix of names, or "" when the
// names share none (or the list is empty).
func FindPrefix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	prefix := ""
	for length := 1; length <= len(names[0]); length++ {
		candidate := names[0][:length]
		shared := true
		for _, name := range names {
			if len(name) < length || name[:length] != candidate {
				shared = false
				break
			}
		}
		if !shared {
			break
		}
		prefix = candidate
	}

	return prefix
}

// FindCorrespondingVariables matches agents to variables by the numeric
// index embedded in their names: agent "a1" corresponds to variable "v01"
// (index 1 on both sides, padding ignored). Names that carry no index under
// the given prefixes are skipped.
func FindCorrespondingVariables(agents, variables []string, agentPrefix, varPrefix string) map[string]string {
	agentRe := regexp.MustCompile("^" + regexp.QuoteMeta(agentPrefix) + `(\d+)`)
	varRe := regexp.MustCompile("^" + regexp.QuoteMeta(varPrefix) + `(\d+)`)

	indexedVars := make(map[int]string, len(variables))
	for _, variable := range variables {
		if m := varRe.FindStringSubmatch(variable); m != nil {
			index, _ := strconv.Atoi(m[1])
			indexedVars[index] = variable
		}
	}

	mapping := make(map[string]string, len(agents))
	for _, agent := range agents {
		m := agentRe.FindStringSubmatch(agent)
		if m == nil {
			continue
		}
		index, _ := strconv.Atoi(m[1])
		if variable, ok := indexedVars[index]; ok {
			mapping[agent] = variable
		}
	}

	return mapping
}

// GenerateHostingCosts derives name-mapping hosting costs: each agent hosts
// its corresponding variable (by numeric index) at cost 0; everything else
// falls back to the agent's default hosting cost.
func GenerateHostingCosts(agents, variables []string) map[string]map[string]float64 {
	mapping := FindCorrespondingVariables(agents, variables, "a", "v")
	costs := make(map[string]map[string]float64, len(agents))
	for _, agent := range agents {
		agentCosts := map[string]float64{}
		if variable, ok := mapping[agent]; ok {
			agentCosts[variable] = 0
		}
		costs[agent] = agentCosts
	}

	return costs
}
