package config

// unnamedFile replaces file names which are empty after cleaning.
const unnamedFile = "_unnamed_"
