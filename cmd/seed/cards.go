package main

import (
	"reskin/backend/internal/carddef"
	"reskin/backend/internal/cost"
	"reskin/backend/internal/game"
)

var tokenEngine = game.Input{
	Name:    "TokenEngine",
	Summary: "Collect gem tokens, buy development cards and attract discoveries.",
	Rules: "On your turn take three tokens of different colors, take two tokens of one color, " +
		"reserve a card, or buy a card. Cards discount future purchases of their token color. " +
		"The first player to reach 15 points triggers the final round.",
	Descriptors: []game.DescriptorInput{
		{
			Name:        "Token Cards",
			Description: "Development cards in three tiers. Each grants one permanent token of its color.",
			TableName:   carddef.TokenCards.TableName(),
		},
		{
			Name:        "Discovery Cards",
			Description: "Discoveries visit a player whose cards meet their cost.",
			TableName:   carddef.DiscoveryCards.TableName(),
		},
	},
}

// Ids are stable so decks built on a seeded database survive reseeding.
var tokenCards = []carddef.TokenCard{
	// Tier 1
	{ID: 1, Tier: 1, Token: cost.Black, Cost: cost.Vector{White: 1, Blue: 1, Green: 1, Red: 1}},
	{ID: 2, Tier: 1, Token: cost.Black, Cost: cost.Vector{Green: 2, Red: 1}},
	{ID: 3, Tier: 1, Token: cost.Black, Points: 1, Cost: cost.Vector{Blue: 4}},
	{ID: 4, Tier: 1, Token: cost.Blue, Cost: cost.Vector{White: 1, Green: 1, Red: 1, Black: 1}},
	{ID: 5, Tier: 1, Token: cost.Blue, Cost: cost.Vector{White: 1, Black: 2}},
	{ID: 6, Tier: 1, Token: cost.Blue, Points: 1, Cost: cost.Vector{Red: 4}},
	{ID: 7, Tier: 1, Token: cost.Green, Cost: cost.Vector{White: 1, Blue: 1, Red: 1, Black: 1}},
	{ID: 8, Tier: 1, Token: cost.Green, Cost: cost.Vector{White: 2, Blue: 1}},
	{ID: 9, Tier: 1, Token: cost.Green, Points: 1, Cost: cost.Vector{Black: 4}},
	{ID: 10, Tier: 1, Token: cost.Red, Cost: cost.Vector{White: 1, Blue: 1, Green: 1, Black: 1}},
	{ID: 11, Tier: 1, Token: cost.Red, Cost: cost.Vector{Blue: 2, Green: 1}},
	{ID: 12, Tier: 1, Token: cost.Red, Points: 1, Cost: cost.Vector{White: 4}},
	{ID: 13, Tier: 1, Token: cost.White, Cost: cost.Vector{Blue: 1, Green: 1, Red: 1, Black: 1}},
	{ID: 14, Tier: 1, Token: cost.White, Cost: cost.Vector{Red: 2, Black: 1}},
	{ID: 15, Tier: 1, Token: cost.White, Points: 1, Cost: cost.Vector{Green: 4}},
	// Tier 2
	{ID: 41, Tier: 2, Token: cost.Black, Points: 1, Cost: cost.Vector{White: 3, Blue: 2, Green: 2}},
	{ID: 42, Tier: 2, Token: cost.Black, Points: 2, Cost: cost.Vector{Blue: 1, Green: 4, Red: 2}},
	{ID: 43, Tier: 2, Token: cost.Blue, Points: 1, Cost: cost.Vector{Blue: 2, Green: 2, Red: 3}},
	{ID: 44, Tier: 2, Token: cost.Blue, Points: 2, Cost: cost.Vector{White: 2, Red: 1, Black: 4}},
	{ID: 45, Tier: 2, Token: cost.Green, Points: 1, Cost: cost.Vector{White: 3, Green: 2, Red: 3}},
	{ID: 46, Tier: 2, Token: cost.Green, Points: 3, Cost: cost.Vector{Green: 6}},
	{ID: 47, Tier: 2, Token: cost.Red, Points: 1, Cost: cost.Vector{White: 2, Red: 2, Black: 3}},
	{ID: 48, Tier: 2, Token: cost.Red, Points: 2, Cost: cost.Vector{White: 1, Blue: 4, Green: 2}},
	{ID: 49, Tier: 2, Token: cost.White, Points: 1, Cost: cost.Vector{Green: 3, Red: 2, Black: 2}},
	{ID: 50, Tier: 2, Token: cost.White, Points: 3, Cost: cost.Vector{White: 6}},
	// Tier 3
	{ID: 71, Tier: 3, Token: cost.Black, Points: 4, Cost: cost.Vector{Red: 7}},
	{ID: 72, Tier: 3, Token: cost.Blue, Points: 4, Cost: cost.Vector{White: 7}},
	{ID: 73, Tier: 3, Token: cost.Green, Points: 4, Cost: cost.Vector{Blue: 7}},
	{ID: 74, Tier: 3, Token: cost.Red, Points: 4, Cost: cost.Vector{Green: 7}},
	{ID: 75, Tier: 3, Token: cost.White, Points: 5, Cost: cost.Vector{White: 3, Black: 7}},
}

var discoveryCards = []carddef.DiscoveryCard{
	{ID: 1, Points: 3, Cost: cost.Vector{White: 4, Blue: 4}},
	{ID: 2, Points: 3, Cost: cost.Vector{Green: 4, Red: 4}},
	{ID: 3, Points: 3, Cost: cost.Vector{Red: 4, Black: 4}},
	{ID: 4, Points: 3, Cost: cost.Vector{White: 3, Blue: 3, Black: 3}},
	{ID: 5, Points: 3, Cost: cost.Vector{Blue: 3, Green: 3, Red: 3}},
}
