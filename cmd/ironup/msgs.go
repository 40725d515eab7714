package main

// MsgShort is the one-line description shown in help output
const MsgShort = "One-shot Debian 12 / KDE Plasma workstation setup"

// MsgLong is the full description for the root command
const MsgLong = `ironup provisions a fresh Debian 12 machine running KDE Plasma: it
installs a fixed set of apt packages and Flatpak applications, joins a
ZeroTier network, and reboots. On every later run it only refreshes the
installed packages.

The program must live in a folder of its own, next to (at most) a "log"
folder and a GPLv3.txt file.`

// MsgDisclaimer is printed before anything else happens
const MsgDisclaimer = `# GNU GENERAL PUBLIC LICENSE

Version 3, 29 June 2007

Copyright (C) 2007 Free Software Foundation, Inc.
Everyone is permitted to copy and distribute verbatim copies
of this license document, but changing it is not allowed.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <https://www.gnu.org/licenses/>.`
