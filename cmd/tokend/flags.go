package main

import (
	"github.com/urfave/cli/v2"
)

const (
	accountFlagName  = "account"
	assetIdFlagName  = "asset-id"
	amountFlagName   = "amount"
	toFlagName       = "to"
	nameFlagName     = "name"
	symbolFlagName   = "symbol"
	metadataFlagName = "metadata"
	supplyFlagName   = "supply"
)

var (
	accountFlag = &cli.StringFlag{
		Name:     accountFlagName,
		Usage:    "the authenticated account submitting the command",
		Required: true,
	}
	assetIdFlag = &cli.Uint64Flag{
		Name:     assetIdFlagName,
		Usage:    "id of the asset",
		Required: true,
	}
	amountFlag = &cli.StringFlag{
		Name:     amountFlagName,
		Usage:    "amount in base units, base-10",
		Required: true,
	}
	toFlag = &cli.StringFlag{
		Name:     toFlagName,
		Usage:    "account receiving the funds",
		Required: true,
	}
	nameFlag = &cli.StringFlag{
		Name:     nameFlagName,
		Usage:    "display name of the asset",
		Required: true,
	}
	symbolFlag = &cli.StringFlag{
		Name:     symbolFlagName,
		Usage:    "ticker symbol of the asset",
		Required: true,
	}
	metadataFlag = &cli.StringFlag{
		Name:  metadataFlagName,
		Usage: "opaque metadata attached to the minted asset",
	}
	supplyFlag = &cli.StringFlag{
		Name:     supplyFlagName,
		Usage:    "initial supply credited to the creator, base-10",
		Required: true,
	}
	balanceAccountFlag = &cli.StringFlag{
		Name:     accountFlagName,
		Usage:    "account whose balance to read",
		Required: true,
	}
)
