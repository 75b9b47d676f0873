// Copyright (c) 2025 The chainwatch developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
spvsync is a simplified payment verification client for a Bitcoin-style
proof-of-work network written in Go.

It joins the peer-to-peer overlay, discovers peers via DNS seeding and a
small in-memory address book, maintains a pool of outbound connections,
executes the version/verack handshake, and downloads the block-header chain
from genesis forward. It never validates transactions, relays data, or
serves inbound connections.

The default options are sane for most users. By default the configuration
file is located at ~/.spvsync/spvsync.conf on POSIX-style operating systems
and %LOCALAPPDATA%\spvsync\spvsync.conf on Windows. The -C (--configfile)
flag can be used to override this location.

Usage:

	spvsync [OPTIONS]

Application Options:

	-V, --version                Display version information and exit
	    --homedir=               Path to application home directory
	-C, --configfile=            Path to configuration file
	-b, --datadir=               Directory to store the persisted chain tip
	    --logdir=                Directory to log output
	    --nofilelogging          Disable file logging
	-d, --debuglevel=            Logging level for all subsystems
	                             {trace, debug, info, warn, error, critical}
	                             -- Specify <subsystem>=<level>,<subsystem2>=<level>,...
	                             to set the log level for individual subsystems
	    --testnet                Use the test network
	    --regnet                 Use the regression test network
	    --maxpeers=              Max number of outbound peers
	    --useragent=             User agent comment to advertise in the
	                             version message
	    --proxy=                 Connect via SOCKS5 proxy (eg. 127.0.0.1:9050)
	    --proxyuser=             Username for proxy server
	    --proxypass=             Password for proxy server

Help Options:

	-h, --help                   Show this help message
*/
package main
