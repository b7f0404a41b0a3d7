package client

import (
	"context"
	"encoding/json"
	"net/http"

	internalauth "github.com/dehesa/finance-ig-sub001/internal/auth"
	internalhttp "github.com/dehesa/finance-ig-sub001/internal/http"
	"github.com/dehesa/finance-ig-sub001/pkg/ig"
)

type nodesClient struct {
	http    *internalhttp.Client
	session *internalauth.Session
}

type nodeResponse struct {
	Nodes   []nodeSummary `json:"nodes"`
	Markets []ig.Market   `json:"markets"`
}

type nodeSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GetNode is the recursive navigation-tree aggregator (§4.4): for depth
// D >= 1, it fetches a node then, in order, recurses depth D-1 on each
// sub-node, emitting the fully populated root when finished. Ordering is
// deterministic (depth-first, children indexed in server order). Any
// sub-fetch failure fails the whole aggregate.
func (c *nodesClient) GetNode(ctx context.Context, nodeID string, depth int) (*ig.Node, error) {
	if depth < 1 {
		depth = 1
	}

	return c.fetch(ctx, nodeID, depth)
}

func (c *nodesClient) fetch(ctx context.Context, nodeID string, depth int) (*ig.Node, error) {
	headers, err := c.session.RequestHeaders()
	if err != nil {
		return nil, err
	}

	creds, _ := c.session.Credentials()

	path := "/marketnavigation"
	if nodeID != "" {
		path += "/" + nodeID
	}

	call := internalhttp.NewCall[nodeResponse](c.http).
		Method(http.MethodGet).
		Path(path).
		Version(1).
		Accept(http.StatusOK).
		Credentials(func() (map[ig.HeaderKey]string, error) { return headers, nil }).
		Extra("nodeId", nodeID).
		Extra("timezone", creds.Timezone).
		Decode(func(dc internalhttp.DecodeContext, data []byte) (*nodeResponse, error) {
			var out nodeResponse
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, err
			}

			for i := range out.Markets {
				m := &out.Markets[i]
				m.LastUpdated = localUpdateTime(m.UpdateTime, dc.ServerDate, dc.Location)
			}

			return &out, nil
		})

	page, err := call.Execute(ctx)
	if err != nil {
		return nil, err
	}

	node := &ig.Node{ID: nodeID, Markets: page.Markets}

	if depth == 1 {
		return node, nil
	}

	node.Nodes = make([]ig.Node, 0, len(page.Nodes))

	for _, summary := range page.Nodes {
		child, err := c.fetch(ctx, summary.ID, depth-1)
		if err != nil {
			return nil, err
		}

		child.Name = summary.Name
		node.Nodes = append(node.Nodes, *child)
	}

	return node, nil
}
